package constvars

// ConnectionName identifies this service on broker, cache and database
// connections.
const ConnectionName = "intake-service"

const (
	MongoCollectionUsers          = "users"
	MongoCollectionPatientRecords = "patient_records"
)

const (
	RedisKeySessionFormat       = "session:%s"
	RedisKeyResetPasswordFormat = "reset_password:%s"
	RedisChannelSessionEvents   = "intake:session-events"
)

const (
	PatientFieldID         = "_id"
	PatientFieldOwnerID    = "ownerId"
	PatientFieldName       = "name"
	PatientFieldFatherName = "fatherName"
	PatientFieldAddress    = "address"
	PatientFieldMobile     = "mobile"
	PatientFieldComplaint  = "complaint"
	PatientFieldCreatedAt  = "createdAt"
)
