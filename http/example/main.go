/*
Package main provides a toy example use of switchback's http stack.

Run it from this directory and visit localhost:3000.
*/
package main

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/ranger"
)

//go:embed static
var files embed.FS

const visitsCookie = "visits"

var started = time.Now().UTC().Truncate(time.Second)

// Handler shares the *ranger.Ranger across all example Actions.
type Handler struct {
	*ranger.Ranger
}

// routes registers every example Action.
func (h *Handler) routes() error {
	h.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Action: h.root},
		{Path: "/greet/{name}", Method: http.MethodGet, Action: h.greet},
		{Path: "/visit", Method: http.MethodPost, Action: h.visit},
		{Path: "/forget", Method: http.MethodPost, Action: h.forget},
	})

	h.Subrouter("/api").Handle(router.Route{Path: "/status", Method: http.MethodGet, Action: h.status})

	static, err := fs.Sub(files, "static")
	if err != nil {
		return err
	}

	h.StaticFiles("/static/", static, 3600)
	return nil
}

// root is a cacheable plain text page.
func (h *Handler) root(r *http.Request, res *resp.Response) error {
	res.SetContentString("Welcome to switchback!\n")
	if err := res.SetContentType("text/plain; charset=utf-8"); err != nil {
		return err
	}

	if err := res.SetLastModified(started); err != nil {
		return err
	}

	if err := res.SetPublic(); err != nil {
		return err
	}

	return res.SetMaxAge(60)
}

// greet composes its response out of stamp, which runs against its own *resp.Response.
func (h *Handler) greet(r *http.Request, res *resp.Response) error {
	name := mux.Vars(r)["name"]
	if name == "" {
		res.SetStatusCode(http.StatusBadRequest)
		return nil
	}

	res.SetContentString("Hello, " + name + "!\n")
	if err := res.SetContentType("text/plain; charset=utf-8"); err != nil {
		return err
	}

	return router.Forward(r, res, stamp)
}

// stamp marks a response with when it was generated.
func stamp(_ *http.Request, res *resp.Response) error {
	now := time.Now().UTC()
	if err := res.SetDate(now); err != nil {
		return err
	}

	return res.AddHeader("X-Generated-By", "switchback")
}

// visit counts the visits stored in a cookie before sending the client back to root.
func (h *Handler) visit(r *http.Request, res *resp.Response) error {
	n := 0
	if c, err := r.Cookie(visitsCookie); err == nil {
		n, _ = strconv.Atoi(c.Value)
	}

	c := cookie.New(visitsCookie, strconv.Itoa(n+1))
	c.HttpOnly = true
	c.SameSite = cookie.SameSiteLax
	if err := res.SetCookie(c); err != nil {
		return err
	}

	res.SetRedirect(h.URL(), resp.DefaultRedirectCode)
	return nil
}

// forget drops the visits cookie.
func (h *Handler) forget(r *http.Request, res *resp.Response) error {
	res.SetStatusCode(http.StatusNoContent)
	return res.DeleteCookie(visitsCookie)
}

// status reports on the app as JSON.
func (h *Handler) status(r *http.Request, res *resp.Response) error {
	b, err := json.Marshal(map[string]any{
		"env":     h.Env(),
		"started": started,
	})
	if err != nil {
		return err
	}

	res.SetContent(b)
	if err := res.SetContentType("application/json"); err != nil {
		return err
	}

	return res.SetPrivate()
}

func main() {
	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	h := &Handler{rng}
	if err := h.routes(); err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
	}
}
