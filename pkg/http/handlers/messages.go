package handlers

const (
	msgUnknownEmail  = "No existe una cuenta con este correo electrónico."
	msgBadPassword   = "Contraseña incorrecta."
	msgLoginBlocked  = "Demasiados intentos fallidos. Inténtalo de nuevo en unos minutos."
	msgEmailTaken    = "Este correo electrónico ya está registrado."
	msgBadRequest    = "No pudimos leer los datos enviados."
	msgServerError   = "Ocurrió un error en el servidor. Inténtalo de nuevo."
	msgLoginFailed   = "Usuario o contraseña incorrectos."
	msgLoginSuccess  = "¡Inicio de sesión exitoso!"
	msgRegistered    = "¡Usuario registrado con éxito!"
	msgLoggedOut     = "Has cerrado sesión."
	flashKindError   = "error"
	flashKindSuccess = "success"
)
