package constant

import (
	"net/http"

	"github.com/duccv/bank-web/internal/model/response"
)

var BAD_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Bad request",
}

var INVALID_REQUEST = response.ResponseData{
	Ec:  http.StatusBadRequest,
	Msg: "Invalid request payload",
}

var UNAUTHORIZED = response.ResponseData{
	Ec:  http.StatusUnauthorized,
	Msg: "Unauthorized",
}

var SESSION_EXPIRED = response.ResponseData{
	Ec:    http.StatusUnauthorized,
	Msg:   "Session expired, please login again",
	Error: "session_expired",
}

var NOT_FOUND = response.ResponseData{
	Ec:  http.StatusNotFound,
	Msg: "Not found",
}

var PASSWORD_MISMATCH = response.ResponseData{
	Ec:    http.StatusBadRequest,
	Msg:   "Passwords do not match",
	Error: "validation",
}

var SERVICE_UNAVAILABLE = response.ResponseData{
	Ec:    http.StatusBadGateway,
	Msg:   "Service is temporarily unavailable",
	Error: "upstream",
}

var INTERNAL_SERVER_ERROR = response.ResponseData{
	Ec:  http.StatusInternalServerError,
	Msg: "Internal server error",
}

var FORBIDDEN = response.ResponseData{
	Ec:  http.StatusForbidden,
	Msg: "Forbidden",
}
