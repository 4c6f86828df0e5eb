package swiftdaddy

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Serve serves the output directory on addr until ctx is canceled. Missing
// pages are answered with the theme's 404 page.
func (a *App) Serve(ctx context.Context, addr string) error {
	e := a.newServer()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	a.Logger.Infof("serving %s on http://localhost%s", a.OutputDir(), addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) newServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = a.Logger
	e.HTTPErrorHandler = a.httpErrorHandler(e)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	e.Use(noCacheMiddleware)
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  a.OutputDir(),
		Index: "index.html",
	}))
	return e
}

// noCacheMiddleware keeps browsers from holding on to pages that the
// watcher is about to rebuild.
func noCacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

func (a *App) httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusNotFound {
			if cmp := a.notFoundPage(); cmp != nil {
				_ = RenderStatus(c, http.StatusNotFound, cmp)
				return
			}
			if data, readErr := os.ReadFile(filepath.Join(a.OutputDir(), "404.html")); readErr == nil {
				_ = c.HTMLBlob(http.StatusNotFound, data)
				return
			}
		}
		if he == nil || he.Code >= 500 {
			c.Logger().Errorf("server error: %v", err)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func (a *App) notFoundPage() templ.Component {
	pc := a.LastContext()
	if pc == nil {
		return nil
	}
	return a.Theme.Render(RenderTarget{Kind: PageNotFound}, pc)
}
