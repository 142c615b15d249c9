/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"html"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

func servePageHTML(cfg *Config, w http.ResponseWriter, r *http.Request, title, body string, errs chan<- error) {
	startTime := time.Now()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	securityHeaders(cfg, w)

	written, err := w.Write([]byte(newPage(title, body)))
	if err != nil {
		errs <- err

		return
	}

	logf(cfg, "SERVE: %s (%s) to %s in %s",
		r.URL.Path,
		humanReadableSize(int64(written)),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

func serveError(cfg *Config, w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	securityHeaders(cfg, w)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(newPage("Error", "<p>"+html.EscapeString(message)+"</p>")))
}

func cardRows(cards []Card) string {
	var b strings.Builder

	b.WriteString(`<table><tr><th>Front</th><th>Back</th><th></th></tr>`)
	for _, c := range cards {
		b.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td><a href="/cards/card/%d">edit</a></td></tr>`,
			html.EscapeString(c.Front), html.EscapeString(c.Back), c.ID))
	}
	b.WriteString(`</table>`)

	return b.String()
}

func setOptions(sets []Set, selected int64) string {
	var b strings.Builder

	for _, s := range sets {
		if s.ID == selected {
			b.WriteString(fmt.Sprintf(`<option value="%d" selected>%s</option>`, s.ID, html.EscapeString(s.Name)))
		} else {
			b.WriteString(fmt.Sprintf(`<option value="%d">%s</option>`, s.ID, html.EscapeString(s.Name)))
		}
	}

	return b.String()
}

func serveHomePage(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		cards, err := store.Cards(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load cards.")
			return
		}

		body := fmt.Sprintf("<h1>Quizbox</h1><p>%d cards in the deck.</p>%s", len(cards), cardRows(cards))
		servePageHTML(cfg, w, r, "Quizbox", body, errs)
	}
}

func servePlayPage(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		cards, err := store.Cards(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load cards.")
			return
		}

		if len(cards) == 0 {
			servePageHTML(cfg, w, r, "Play", `<p>No cards yet. <a href="/cards">Add some first.</a></p>`, errs)
			return
		}

		card := cards[rand.IntN(len(cards))]
		body := fmt.Sprintf(`<h1>%s</h1><details><summary>Reveal answer</summary><p>%s</p></details><p><a href="/play">Next card</a></p>`,
			html.EscapeString(card.Front), html.EscapeString(card.Back))
		servePageHTML(cfg, w, r, "Play", body, errs)
	}
}

func serveCardList(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		cards, err := store.Cards(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load cards.")
			return
		}
		sets, err := store.Sets(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load sets.")
			return
		}

		var b strings.Builder
		b.WriteString("<h1>Cards</h1>")
		b.WriteString(cardRows(cards))
		b.WriteString(`<h2>Add a card</h2><form method="post" action="/cards/add">`)
		b.WriteString(`<p><label>Front <input name="front" required></label></p>`)
		b.WriteString(`<p><label>Back <input name="back" required></label></p>`)
		b.WriteString(`<p><label>Set <select name="set_id">` + setOptions(sets, 0) + `</select></label></p>`)
		b.WriteString(`<p><button type="submit">Add</button></p></form>`)

		servePageHTML(cfg, w, r, "Cards", b.String(), errs)
	}
}

func serveCardAdd(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		setID, err := strconv.ParseInt(r.PostFormValue("set_id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid set.")
			return
		}

		card, err := store.CreateCard(r.Context(), r.PostFormValue("front"), r.PostFormValue("back"), setID)
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusBadRequest, "Failed to create card.")
			return
		}

		logf(cfg, "STORE: Created card %d", card.ID)
		http.Redirect(w, r, "/cards", http.StatusFound)
	}
}

func serveCardDetail(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid card id.")
			return
		}

		card, err := store.CardByID(r.Context(), id)
		if err == errNotFound {
			serveError(cfg, w, http.StatusNotFound, "Card not found.")
			return
		}
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load card.")
			return
		}
		sets, err := store.Sets(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load sets.")
			return
		}

		var b strings.Builder
		b.WriteString(fmt.Sprintf(`<h1>Card %d</h1><form method="post" action="/cards/card/%d/edit">`, card.ID, card.ID))
		b.WriteString(fmt.Sprintf(`<p><label>Front <input name="front" value="%s" required></label></p>`, html.EscapeString(card.Front)))
		b.WriteString(fmt.Sprintf(`<p><label>Back <input name="back" value="%s" required></label></p>`, html.EscapeString(card.Back)))
		b.WriteString(`<p><label>Set <select name="set_id">` + setOptions(sets, card.SetID) + `</select></label></p>`)
		b.WriteString(`<p><button type="submit">Save</button></p></form>`)
		b.WriteString(fmt.Sprintf(`<form method="post" action="/cards/card/%d/delete"><button type="submit">Delete</button></form>`, card.ID))

		servePageHTML(cfg, w, r, "Card", b.String(), errs)
	}
}

func serveCardEdit(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid card id.")
			return
		}
		setID, err := strconv.ParseInt(r.PostFormValue("set_id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid set.")
			return
		}

		err = store.UpdateCard(r.Context(), id, r.PostFormValue("front"), r.PostFormValue("back"), setID)
		if err == errNotFound {
			serveError(cfg, w, http.StatusNotFound, "Card not found.")
			return
		}
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusBadRequest, "Failed to update card.")
			return
		}

		http.Redirect(w, r, fmt.Sprintf("/cards/card/%d", id), http.StatusFound)
	}
}

func serveCardDelete(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid card id.")
			return
		}

		err = store.DeleteCard(r.Context(), id)
		if err == errNotFound {
			serveError(cfg, w, http.StatusNotFound, "Card not found.")
			return
		}
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to delete card.")
			return
		}

		logf(cfg, "STORE: Deleted card %d", id)
		http.Redirect(w, r, "/cards", http.StatusFound)
	}
}

func serveSetList(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sets, err := store.Sets(r.Context())
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load sets.")
			return
		}

		var b strings.Builder
		b.WriteString("<h1>Sets</h1><ul>")
		for _, s := range sets {
			b.WriteString(fmt.Sprintf(`<li><a href="/sets/set/%d">%s</a></li>`, s.ID, html.EscapeString(s.Name)))
		}
		b.WriteString("</ul>")
		b.WriteString(`<h2>Add a set</h2><form method="post" action="/sets/add">`)
		b.WriteString(`<p><label>Name <input name="name" required></label></p>`)
		b.WriteString(`<p><button type="submit">Add</button></p></form>`)

		servePageHTML(cfg, w, r, "Sets", b.String(), errs)
	}
}

func serveSetAdd(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		set, err := store.CreateSet(r.Context(), r.PostFormValue("name"))
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusBadRequest, "Failed to create set.")
			return
		}

		logf(cfg, "STORE: Created set %d (%q)", set.ID, set.Name)
		http.Redirect(w, r, "/sets", http.StatusFound)
	}
}

func serveSetDetail(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid set id.")
			return
		}

		set, err := store.SetByID(r.Context(), id)
		if err == errNotFound {
			serveError(cfg, w, http.StatusNotFound, "Set not found.")
			return
		}
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load set.")
			return
		}

		cards, err := store.CardsBySet(r.Context(), id)
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to load cards.")
			return
		}

		var b strings.Builder
		b.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(set.Name)))
		b.WriteString(cardRows(cards))
		b.WriteString(fmt.Sprintf(`<form method="post" action="/sets/set/%d/delete"><button type="submit">Delete set</button></form>`, set.ID))

		servePageHTML(cfg, w, r, set.Name, b.String(), errs)
	}
}

func serveSetDelete(cfg *Config, store *Store, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
		if err != nil {
			serveError(cfg, w, http.StatusBadRequest, "Invalid set id.")
			return
		}

		err = store.DeleteSet(r.Context(), id)
		if err == errNotFound {
			serveError(cfg, w, http.StatusNotFound, "Set not found.")
			return
		}
		if err != nil {
			errs <- err
			serveError(cfg, w, http.StatusInternalServerError, "Failed to delete set.")
			return
		}

		logf(cfg, "STORE: Deleted set %d", id)
		http.Redirect(w, r, "/sets", http.StatusFound)
	}
}

func registerCardPages(cfg *Config, mux *httprouter.Router, store *Store, errs chan<- error) {
	mux.GET(cfg.prefix+"/", serveHomePage(cfg, store, errs))
	mux.GET(cfg.prefix+"/play", servePlayPage(cfg, store, errs))

	mux.GET(cfg.prefix+"/cards", serveCardList(cfg, store, errs))
	mux.POST(cfg.prefix+"/cards/add", serveCardAdd(cfg, store, errs))
	mux.GET(cfg.prefix+"/cards/card/:id", serveCardDetail(cfg, store, errs))
	mux.POST(cfg.prefix+"/cards/card/:id/edit", serveCardEdit(cfg, store, errs))
	mux.POST(cfg.prefix+"/cards/card/:id/delete", serveCardDelete(cfg, store, errs))

	mux.GET(cfg.prefix+"/sets", serveSetList(cfg, store, errs))
	mux.POST(cfg.prefix+"/sets/add", serveSetAdd(cfg, store, errs))
	mux.GET(cfg.prefix+"/sets/set/:id", serveSetDetail(cfg, store, errs))
	mux.POST(cfg.prefix+"/sets/set/:id/delete", serveSetDelete(cfg, store, errs))
}
