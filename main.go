package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
)

// userRepository is a stand-in service resolved through the wildcard
// backend: every "repo.<name>" alias maps to one of these.
type userRepository struct {
	Name string
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		panic(err)
	}
	c := application.Container

	// ── Bindings ─────────────────────────────────────────────────────────────

	// Factory: a fresh id per resolution
	must(c.Bind("request-id", func(c *container.Container, _ container.Args) (any, error) {
		return uuid.NewString(), nil
	}, nil))

	// Singleton: one clock for the process lifetime
	must(c.Singleton("started-at", func(c *container.Container, _ container.Args) (any, error) {
		return time.Now().UTC(), nil
	}, nil))

	// Wildcard: the whole repo.* namespace from one handler
	must(c.Wildcard("repo.*", func(c *container.Container, alias string) (any, error) {
		return &userRepository{Name: alias}, nil
	}))

	// Compound keys: literal settings in the values backend
	must(c.SetKey("values::greeting", "Welcome to go-container!"))

	// ── Routes ───────────────────────────────────────────────────────────────

	router := container.MustResolve[*routing.Router](c, "router")

	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		greeting, err := c.GetKey("values::greeting")
		if err != nil {
			res.ServerError()
			return
		}
		res.Success(map[string]any{"message": greeting})
	})

	router.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		res.Success(map[string]any{
			"request_id": container.MustResolve[string](c, "request-id"),
			"started_at": container.MustResolve[time.Time](c, "started-at"),
		})
	})

	router.Get("/repos/{name}", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		alias := "repo." + routing.Param(req, "name")
		repo, err := container.Resolve[*userRepository](c, alias, container.WithoutMake())
		if err != nil {
			res.NotFound()
			return
		}
		res.Success(map[string]any{"repository": repo.Name})
	})

	application.MustRun()
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
