/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 16">` +
	`<rect width="16" height="16" rx="3" fill="#35597a"/>` +
	`<text x="8" y="12" font-size="11" text-anchor="middle" fill="#fff" font-family="sans-serif">?</text></svg>`

func getFavicon() string {
	return `<link rel="icon" type="image/svg+xml" href="/favicon.svg">
	<meta name="theme-color" content="#35597a">`
}

func serveFavicon(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(faviconSVG))
		if err != nil {
			errs <- err

			return
		}
	}
}
