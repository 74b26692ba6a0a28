// Package authforms mounts the login and registration pages, their
// verification endpoints and the session routes on a fiber app.
package authforms

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/oarkflow/squealx"

	"github.com/oarkflow/authforms/pkg/contracts"
	"github.com/oarkflow/authforms/pkg/http/middlewares"
	"github.com/oarkflow/authforms/pkg/http/routes"
	"github.com/oarkflow/authforms/pkg/libs"
	"github.com/oarkflow/authforms/pkg/objects"
	"github.com/oarkflow/authforms/pkg/storage"
	"github.com/oarkflow/authforms/pkg/utils"
)

//go:embed views
var Views embed.FS

const DefaultLayout = "layouts/main"

type Plugin struct {
	App             *fiber.App
	Prefix          string
	LoginSuccessURL string
	StaticDir       string
	DB              *squealx.DB
	Storage         contracts.Storage
}

type Option func(*Plugin)

func WithApp(app *fiber.App) Option {
	return func(p *Plugin) { p.App = app }
}

func WithPrefix(prefix string) Option {
	return func(p *Plugin) { p.Prefix = prefix }
}

func WithLoginSuccessURL(uri string) Option {
	return func(p *Plugin) { p.LoginSuccessURL = uri }
}

// WithStaticDir serves dir under /static. The wasm client and its loader
// are expected there.
func WithStaticDir(dir string) Option {
	return func(p *Plugin) { p.StaticDir = dir }
}

func WithDB(db *squealx.DB) Option {
	return func(p *Plugin) { p.DB = db }
}

// WithStorage bypasses the database entirely.
func WithStorage(store contracts.Storage) Option {
	return func(p *Plugin) { p.Storage = store }
}

// NewPlugin installs the view engine and returns an unregistered plugin.
// objects.Config must be loaded before Register is called.
func NewPlugin(opts ...Option) (*Plugin, error) {
	p := &Plugin{}
	for _, opt := range opts {
		opt(p)
	}
	engine, err := NewViewEngine()
	if err != nil {
		return nil, err
	}
	objects.ViewEngine = engine
	objects.Layout = DefaultLayout
	return p, nil
}

// NewViewEngine builds the html engine over the embedded templates.
func NewViewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(Views, "views")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]any{
		"unescape": func(s string) template.HTML {
			return template.HTML(s)
		},
		"uris": func() map[string]string {
			return utils.GetURIs()
		},
	})
	return engine, nil
}

func (p *Plugin) Register() error {
	cfg := libs.LoadConfig()
	if p.LoginSuccessURL != "" {
		cfg.LoginSuccessURL = p.LoginSuccessURL
	}
	vault, err := p.vault()
	if err != nil {
		return err
	}
	objects.Manager = libs.NewManager(vault, cfg)
	if p.App != nil {
		p.App.Use(middlewares.SecurityHeaders)
		if p.StaticDir != "" {
			p.App.Static(utils.StaticURI, p.StaticDir)
		}
		routes.Setup(p.Prefix, p.App)
		routes.ProtectedRoutes(p.App.Group(p.Prefix))
	}
	return nil
}

func (p *Plugin) vault() (contracts.Storage, error) {
	if p.Storage != nil {
		return p.Storage, nil
	}
	db := p.DB
	if db == nil {
		if objects.Config.GetString("db.driver") == libs.MemoryDriver {
			return storage.NewMemoryStorage(), nil
		}
		var err error
		if db, err = libs.OpenDatabase(); err != nil {
			return nil, err
		}
		p.DB = db
	}
	vault, err := storage.NewDatabaseStorage(db)
	if err != nil {
		return nil, fmt.Errorf("initialize user storage: %w", err)
	}
	return vault, nil
}

func (p *Plugin) Name() string {
	return "AuthForms"
}

func (p *Plugin) Close() error {
	if closer, ok := p.Storage.(interface{ Close() error }); ok {
		return closer.Close()
	}
	if p.DB != nil {
		return p.DB.Close()
	}
	return nil
}
