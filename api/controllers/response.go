package controllers

// APIResponse estructura de respuesta unificada de la API
type APIResponse struct {
	Status int         `json:"status" example:"0"`
	Msg    string      `json:"msg" example:"operación exitosa"`
	Data   interface{} `json:"data,omitempty"`
}

// SuccessResponse respuesta exitosa
func SuccessResponse(msg string, data interface{}) APIResponse {
	return APIResponse{Status: 0, Msg: msg, Data: data}
}

// BadRequestResponse respuesta de parámetros inválidos
func BadRequestResponse(msg string, err error) APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return APIResponse{Status: 400, Msg: msg}
}

// InternalErrorResponse respuesta de error interno del servidor
func InternalErrorResponse(msg string, err error) APIResponse {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return APIResponse{Status: 500, Msg: msg}
}
