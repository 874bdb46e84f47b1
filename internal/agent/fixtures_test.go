package agent

import (
	"strings"
	"time"
)

// fixedTime pins result timestamps in tests.
var fixedTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func fixedClock() time.Time {
	return fixedTime
}

// longCopy is comfortably more than 300 characters of visible text.
var longCopy = strings.Repeat("Our editors read every title before it reaches the shelf. ", 8)

// perfectURL is served over HTTPS.
const perfectURL = "https://shop.example.com/books"

// perfectPage passes every check of every agent.
var perfectPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="Content-Security-Policy" content="default-src 'self'">
<title>Example Books</title>
<meta name="description" content="Hand-picked books, shipped fast.">
<script type="application/ld+json">{"@type":"Store","name":"Example Books"}</script>
<style>body{font-family:Georgia,serif}.shelf{display:grid}@media (max-width:600px){.shelf{display:block}}</style>
</head>
<body>
<a class="skip-link" href="#main">Skip to main content</a>
<main id="main" aria-label="Catalog">
<h1>Books</h1>
<h2>Featured</h2>
<img src="/img/cover.jpg" alt="Book cover" loading="lazy" srcset="/img/cover-2x.jpg 2x">
<p>Price: $12.99. Buy now or add to cart. Secure checkout with a money-back guarantee. Trusted by readers.</p>
<p>Customer reviews and testimonials from our community.</p>
<p>` + longCopy + `</p>
<section>
<h2>Related books</h2>
<a href="/books/1">One</a>
<a href="/books/2">Two</a>
<a href="https://shop.example.com/books/3">Three</a>
</section>
<script>window.addEventListener("error", function onerror() {});</script>
</main>
</body>
</html>`

// seoFullMarks has a title, description, h1, a lazy image with srcset,
// JSON-LD and three internal links.
const seoFullMarks = `<html><head>
<title>Shop</title>
<meta name="description" content="Everything for the kitchen.">
<script type="application/ld+json">{"@type":"Store"}</script>
</head><body>
<h1>Shop</h1>
<img src="/pan.jpg" loading="lazy" srcset="/pan-2x.jpg 2x">
<a href="/pans">Pans</a><a href="/pots">Pots</a><a href="/knives">Knives</a>
</body></html>`

// seoNoTitleNoDescription is seoFullMarks without title and description.
const seoNoTitleNoDescription = `<html><head>
<script type="application/ld+json">{"@type":"Store"}</script>
</head><body>
<h1>Shop</h1>
<img src="/pan.jpg" loading="lazy" srcset="/pan-2x.jpg 2x">
<a href="/pans">Pans</a><a href="/pots">Pots</a><a href="/knives">Knives</a>
</body></html>`

// barePage fails almost every check.
const barePage = `<html><body>hello</body></html>`
