package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pthm/hxkit"
	"github.com/pthm/hxkit/example/components"
)

func main() {
	store := NewStore()

	// Use a real 32-byte secret in production.
	reg := hxkit.NewRegistry([]byte("example-key-must-be-32-bytes!!!!"))
	components.Routes(reg, store)

	mux := http.NewServeMux()
	mux.Handle("/_c/", reg.Handler())
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		page := components.Page(store, r.URL.Query().Get("filter"))
		if err := hxkit.Render(w, r, page, reg.Env().Child()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":8080"
	fmt.Printf("Starting server at http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
