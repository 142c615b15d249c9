/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"log"
	"strings"
	"time"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// newPage wraps body in the shared page scaffolding. body is trusted HTML;
// callers escape any user-provided values before building it.
func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(getFavicon())
	htmlBody.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	htmlBody.WriteString(`<style>body{font-family:sans-serif;max-width:40rem;margin:2rem auto;padding:0 1rem;}`)
	htmlBody.WriteString(`nav a{margin-right:1rem;}table{border-collapse:collapse;}td,th{border:1px solid #ccc;padding:.3rem .6rem;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head><body>", title))
	htmlBody.WriteString(`<nav><a href="/">Home</a><a href="/cards">Cards</a><a href="/sets">Sets</a><a href="/play">Play</a><a href="/trivia">Play with friends</a></nav>`)
	htmlBody.WriteString(body)
	htmlBody.WriteString(`</body></html>`)

	return htmlBody.String()
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}
