package http

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SwaggerDocURL is where the generated OpenAPI document is served.
const SwaggerDocURL = "/swagger/doc.json"

// RegisterSwaggerDocs registers Swagger documentation routes. A nil handler
// serves the UI backed by the registered swag document.
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	if swaggerHandler == nil {
		swaggerHandler = httpSwagger.Handler(httpSwagger.URL(SwaggerDocURL))
	}
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}
