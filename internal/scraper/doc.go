// Package scraper provides HTTP fetching and HTML table parsing for hockey-reference.com.
//
// The scraper package fetches season schedule and boxscore pages and locates tables by
// their id attribute. Sports-reference sites ship some secondary tables inside HTML
// comments; when a table is missing from the live DOM the scraper searches comment
// nodes as well. Tables are returned as ordered rows of verbatim cell text so
// callers can build named records from them.
package scraper
