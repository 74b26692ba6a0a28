package utils

var (
	LandingURI          = "/"
	HealthURI           = "/health"
	AppURI              = "/app"
	LoginURI            = "/login"
	RegisterURI         = "/register"
	LogoutURI           = "/logout"
	CheckCredentialsURI = "/api/check_credentials"
	CheckRegisterURI    = "/api/check_register"
	StaticURI           = "/static"
)

var (
	LandingTemplate  = "auth/index"
	AppTemplate      = "auth/protected"
	LoginTemplate    = "auth/login"
	RegisterTemplate = "auth/register"
	ErrorTemplate    = "auth/error"
)

func GetURIs() map[string]string {
	return map[string]string{
		"Landing":          LandingURI,
		"App":              AppURI,
		"Login":            LoginURI,
		"Register":         RegisterURI,
		"Logout":           LogoutURI,
		"CheckCredentials": CheckCredentialsURI,
		"CheckRegister":    CheckRegisterURI,
		"Static":           StaticURI,
	}
}

var DefaultSessionName = "session_token"
