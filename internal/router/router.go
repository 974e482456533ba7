package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"inkwell/internal/config"
	"inkwell/internal/errors"
	"inkwell/internal/handler"
	"inkwell/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"alive": true})
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/login", authHandler.Login)

	blog := e.Group("/blog")
	blog.GET("/all", blogHandler.ListAll)
	blog.GET("/page/:page", blogHandler.ListPage)

	// Secured routes. The middleware hands the raw bearer token to the auth
	// service, which verifies it and resolves the user in one step.
	secured := blog.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Validate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var pe *errors.PersistenceError
			if stderrors.As(err, &pe) {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			// Missing or malformed Authorization headers arrive as
			// middleware errors rather than taxonomy errors; the outcome is
			// the same opaque 401 either way.
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			httpErr := errors.NewHTTPError(http.StatusUnauthorized, "could not validate credentials", "UNAUTHORIZED")
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	secured.POST("/create", blogHandler.Create)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
