// Package web provides the web server of the market shop: routing,
// sessions, templates, static files and the storage maintenance job.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"

	"market/config"
	"market/logger"
	"market/util/common"
	"market/util/random"
	"market/web/controller"
	"market/web/job"
	"market/web/locale"
	"market/web/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// Server is the market web server with its controllers and the cron
// scheduler for storage upkeep.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	shop  *controller.ShopController
	api   *controller.APIController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlFiles walks the local `web/html` directory and returns the
// template file paths. Used only in debug mode so templates reload without
// a rebuild.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	t, err := t.ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, err
	}
	return t, nil
}

// sessionSecret returns the configured session secret, generating a random
// one when the environment does not provide it.
func sessionSecret() string {
	secret := config.GetSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("MARKET_SECRET is not set, using a random session secret; sessions will not survive a restart")
	}
	return secret
}

// initRouter initializes Gin, registers middleware, templates, static
// assets and controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(sessionSecret()))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("market", store))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	// Pages render from a clone of this base template so the i18n func can
	// be bound to the request's language; the base itself never executes.
	funcMap := template.FuncMap{"i18n": locale.I18n}
	var tpl *template.Template
	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		tpl, err = template.New("").Funcs(funcMap).ParseFiles(files...)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		tpl, err = s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
	}
	engine.Use(func(c *gin.Context) {
		c.Set("htmlTemplate", tpl)
		c.Next()
	})

	// Catalog pictures and uploaded avatars are both served under /images,
	// matching the relative paths stored on User.Avatar and Item.Image.
	if err := os.MkdirAll(config.GetUploadFolderPath(), 0o750); err != nil {
		return nil, err
	}
	engine.Static("/images", config.GetStaticFolderPath())

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, config.GetSessionMaxAge())
	s.shop = controller.NewShopController(g)
	s.api = controller.NewAPIController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules storage upkeep: a daily SQLite WAL checkpoint.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job err:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
