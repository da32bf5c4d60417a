package api

// @title Parley API
// @version v1.0.0
// @description API for the Parley chat backend.

// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8690
// @BasePath /api
// @schemes http

// @securityDefinitions.apikey SessionToken
// @in header
// @name Authorization
// @description Session token issued by an OAuth callback, sent as "Bearer {token}".
