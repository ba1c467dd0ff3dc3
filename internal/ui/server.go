package ui

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"github.com/developia-II/feedback-collector/internal/client"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/models"
)

//go:embed views/*.html
var viewsFS embed.FS

const defaultSessionTTL = 24 * time.Hour

type ServerOptions struct {
	// API is shared by every visitor; each gets its own controller.
	API        client.API
	Location   *time.Location
	SessionTTL time.Duration
	AccessLog  bool
}

// visitor is the per-browser-session UI state.
type visitor struct {
	mu       sync.Mutex
	ctrl     *client.Controller
	form     Form
	lastSeen time.Time
}

// Server is the web front end: it renders the dashboard and the form and
// forwards user actions to a controller owned by the visitor's session.
type Server struct {
	app      *fiber.App
	api      client.API
	loc      *time.Location
	ttl      time.Duration
	sessions *session.Store

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = defaultSessionTTL
	}

	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	s := &Server{
		api: opts.API,
		loc: opts.Location,
		ttl: opts.SessionTTL,
		sessions: session.New(session.Config{
			Expiration:     opts.SessionTTL,
			KeyLookup:      "cookie:feedback_session",
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
			KeyGenerator:   uuid.NewString,
		}),
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}

	// Query and form values outlive the request in per-session state, so they
	// must not alias fasthttp's reused buffers.
	app := fiber.New(fiber.Config{
		AppName:   "feedback-collector-web",
		Views:     engine,
		Immutable: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(fiberlogger.New())
	}

	app.Get("/", s.index)
	app.Post("/submit", s.submit)
	app.Post("/refresh", s.refresh)

	s.app = app
	return s, nil
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// visitorFor returns the state bound to the request's session, creating and
// loading it for new sessions.
func (s *Server) visitorFor(c *fiber.Ctx) (*visitor, error) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil, err
	}
	id := sess.ID()
	sess.Set("seen", true)
	if err := sess.Save(); err != nil {
		return nil, err
	}

	now := s.now()
	s.mu.Lock()
	s.pruneLocked(now)
	v, ok := s.visitors[id]
	if !ok {
		v = &visitor{ctrl: client.NewController(s.api)}
		s.visitors[id] = v
	}
	v.lastSeen = now
	s.mu.Unlock()

	if !ok {
		v.ctrl.Dispatch(c.UserContext(), client.RefreshRequested{})
	}
	return v, nil
}

func (s *Server) pruneLocked(now time.Time) {
	for id, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.ttl {
			delete(s.visitors, id)
		}
	}
}

type pageData struct {
	Form      *Form
	Dashboard Dashboard
}

// GET /?search=&sortBy=&order=
func (s *Server) index(c *fiber.Ctx) error {
	v, err := s.visitorFor(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	args := c.Context().QueryArgs()

	if args.Has("search") {
		v.ctrl.Dispatch(ctx, client.SearchChanged{Term: c.Query("search")})
	}
	if args.Has("sortBy") {
		v.ctrl.Dispatch(ctx, client.SortFieldChanged{Field: models.SortField(c.Query("sortBy"))})
	}
	if args.Has("order") {
		v.ctrl.Dispatch(ctx, client.SortOrderChanged{Order: models.SortOrder(c.Query("order"))})
	}

	dash := NewDashboard(v.ctrl.State(), s.loc)

	v.mu.Lock()
	form := v.form
	v.mu.Unlock()

	return c.Render("index", pageData{Form: &form, Dashboard: dash})
}

// POST /submit
func (s *Server) submit(c *fiber.Ctx) error {
	v, err := s.visitorFor(c)
	if err != nil {
		return err
	}

	rating, _ := strconv.Atoi(c.FormValue("rating"))
	form := Form{
		Name:    c.FormValue("name"),
		Message: c.FormValue("message"),
		Rating:  rating,
	}
	if form.Submit(c.UserContext(), v.ctrl) {
		logger.GetLogger().Debugw("Feedback submitted from web", "request_id", c.Locals("requestid"))
	}

	v.mu.Lock()
	v.form = form
	v.mu.Unlock()

	return c.Redirect("/", fiber.StatusSeeOther)
}

// POST /refresh
func (s *Server) refresh(c *fiber.Ctx) error {
	v, err := s.visitorFor(c)
	if err != nil {
		return err
	}
	v.ctrl.Dispatch(c.UserContext(), client.RefreshRequested{})
	return c.Redirect("/", fiber.StatusSeeOther)
}
