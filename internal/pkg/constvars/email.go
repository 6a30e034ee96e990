package constvars

const (
	EmailResetPasswordSubject    = "Reset your intake password"
	EmailResetPasswordHTMLFormat = `<p>Hello,</p>
<p>We received a request to reset the password for %s.</p>
<p><a href="%s">Reset your password</a></p>
<p>This link expires in %d minutes. If you did not ask for a reset you can ignore this email.</p>`
)
