package console

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"

	"github.com/pettrack/console/guard"
	"github.com/pettrack/console/model"
	"github.com/pettrack/console/session"
)

type AuthControllerRoutes struct {
	Login        string
	Logout       string
	Register     string
	Perfil       string
	Home         string
	Unauthorized string
}

type AuthControllerViews struct {
	Login        string
	Register     string
	Perfil       string
	Home         string
	Unauthorized string
	Missing      string
}

// AuthController renders the auth pages and drives the session manager
type AuthController struct {
	Debug   bool
	Logger  Logger
	Session *session.Manager
	Users   UserProfileService
	Guard   guard.Config
	Routes  *AuthControllerRoutes
	Views   *AuthControllerViews
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Guard:  guard.DefaultConfig(),
		Routes: &AuthControllerRoutes{
			Login:        "/login",
			Logout:       "/logout",
			Register:     "/register",
			Perfil:       "/perfil",
			Home:         "/home",
			Unauthorized: "/unauthorized",
		},
		Views: &AuthControllerViews{
			Login:        "login",
			Register:     "register",
			Perfil:       "perfil",
			Home:         "home",
			Unauthorized: "unauthorized",
			Missing:      "missing",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Session == nil {
		panic("Missing session manager in auth controller...")
	}

	if c.Users == nil {
		panic("Missing users service in auth controller...")
	}

	return c
}

func WithSession(manager *session.Manager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Session = manager
		return c
	}
}

func WithUsers(users UserProfileService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Users = users
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func (a *AuthController) LoginShow(c *fiber.Ctx) error {
	return c.Render(a.Views.Login, a.viewContext(c, fiber.Map{
		"errors": nil,
		"record": nil,
	}))
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := session.LoginPayload{}
	errs := map[string]string{}

	if err := c.BodyParser(&payload); err != nil {
		errs["form"] = "Failed to parse form"
		a.Logger.Error("login parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).Render(a.Views.Login, a.viewContext(c, fiber.Map{
			"errors": errs,
			"record": payload,
		}))
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if err := a.Session.Login(c.UserContext(), payload); err != nil {
		if validationErrs := formatValidationErrors(err); validationErrs != nil {
			return c.Render(a.Views.Login, a.viewContext(c, fiber.Map{
				"validation": validationErrs,
				"record":     payload,
			}))
		}

		errs["authentication"] = "Email ou senha incorretos"
		return c.Render(a.Views.Login, a.viewContext(c, fiber.Map{
			"errors": errs,
			"record": payload,
		}))
	}

	setFlash(c, "success", "Login realizado com sucesso!")
	redirect := guard.GetRedirect(c, a.Guard, a.Routes.Home)

	return c.Redirect(redirect, fiber.StatusSeeOther)
}

func (a *AuthController) LogOut(c *fiber.Ctx) error {
	if err := a.Session.Logout(c.UserContext()); err != nil {
		a.Logger.Error("logout: %v", err)
	}

	setFlash(c, "info", "Sessão encerrada")
	return c.Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) RegistrationShow(c *fiber.Ctx) error {
	return c.Render(a.Views.Register, a.viewContext(c, fiber.Map{
		"errors": map[string]string{},
		"record": session.RegisterPayload{},
	}))
}

func (a *AuthController) RegistrationCreate(c *fiber.Ctx) error {
	payload := session.RegisterPayload{}

	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Error("register parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).Render(a.Views.Register, a.viewContext(c, fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		}))
	}

	if err := a.Session.Register(c.UserContext(), payload); err != nil {
		if validationErrs := formatValidationErrors(err); validationErrs != nil {
			return c.Render(a.Views.Register, a.viewContext(c, fiber.Map{
				"validation": validationErrs,
				"record":     payload,
			}))
		}

		return c.Render(a.Views.Register, a.viewContext(c, fiber.Map{
			"errors": map[string]string{"registration": "Não foi possível criar a conta"},
			"record": payload,
		}))
	}

	setFlash(c, "success", "Conta criada, faça login para continuar")
	return c.Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) HomeShow(c *fiber.Ctx) error {
	return c.Render(a.Views.Home, a.viewContext(c, fiber.Map{}))
}

func (a *AuthController) UnauthorizedShow(c *fiber.Ctx) error {
	return c.Render(a.Views.Unauthorized, a.viewContext(c, fiber.Map{}))
}

func (a *AuthController) MissingShow(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render(a.Views.Missing, a.viewContext(c, fiber.Map{}))
}

// PerfilPayload carries the editable profile fields
type PerfilPayload struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// Validate will run validation rules
func (p PerfilPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.Phone, validation.By(model.ValidateOptionalPhone)),
	)
}

func (a *AuthController) PerfilShow(c *fiber.Ctx) error {
	user := a.Session.Current().User
	return c.Render(a.Views.Perfil, a.viewContext(c, fiber.Map{
		"record": user,
	}))
}

func (a *AuthController) PerfilPost(c *fiber.Ctx) error {
	current := a.Session.Current().User
	if current == nil {
		return c.Redirect(a.Routes.Login, fiber.StatusSeeOther)
	}

	payload := PerfilPayload{}
	if err := c.BodyParser(&payload); err != nil {
		a.Logger.Error("perfil parse payload: %v", err)
		return c.Status(fiber.StatusBadRequest).Render(a.Views.Perfil, a.viewContext(c, fiber.Map{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": current,
		}))
	}

	if err := payload.Validate(); err != nil {
		return c.Render(a.Views.Perfil, a.viewContext(c, fiber.Map{
			"validation": formatValidationErrors(err),
			"record":     current,
		}))
	}

	record := *current
	record.Name = payload.Name
	record.Email = payload.Email
	record.Phone = payload.Phone

	updated, err := a.Users.UpdateMe(c.UserContext(), &record)
	if err != nil {
		a.Logger.Error("perfil update: %v", err)
		return c.Render(a.Views.Perfil, a.viewContext(c, fiber.Map{
			"errors": map[string]string{"update": "Não foi possível salvar o perfil"},
			"record": current,
		}))
	}

	if err := a.Session.SaveProfile(c.UserContext(), updated); err != nil {
		a.Logger.Error("perfil cache profile: %v", err)
	}

	setFlash(c, "success", "Perfil atualizado")
	return c.Redirect(a.Routes.Perfil, fiber.StatusSeeOther)
}

// viewContext layers the session state and any pending flash on top of
// the handler's own data.
func (a *AuthController) viewContext(c *fiber.Ctx, data fiber.Map) fiber.Map {
	current := a.Session.Current()
	data["current_user"] = current.User
	data["is_authenticated"] = a.Session.IsAuthenticated()
	data["is_admin"] = a.Session.IsAdmin()

	if flash := consumeFlash(c); flash != nil {
		data["flash"] = flash
	}

	return data
}

// formatValidationErrors flattens ozzo validation errors into a
// field-to-message map for the templates. Returns nil for anything
// that is not a validation failure.
func formatValidationErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var rich *goerrors.Error
	if errors.As(err, &rich) {
		if rich.Category != goerrors.CategoryValidation {
			return nil
		}
		if rich.Source != nil {
			err = rich.Source
		}
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := map[string]string{}
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}

	return out
}
