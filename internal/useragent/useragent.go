// Package useragent classifies incoming user agents so the preview
// endpoint can choose between a meta-tag-only document for link-preview
// fetchers and the full page for humans.
package useragent

import "strings"

// botSignatures are lowercase substrings of known crawler and
// link-preview fetcher user agents.
var botSignatures = []string{
	"facebookexternalhit",
	"facebookcatalog",
	"whatsapp",
	"twitterbot",
	"telegrambot",
	"slackbot",
	"slack-imgproxy",
	"discordbot",
	"linkedinbot",
	"skypeuripreview",
	"pinterestbot",
	"pinterest/",
	"vkshare",
	"viber",
	"line-poker",
	"googlebot",
	"bingbot",
	"yandexbot",
	"duckduckbot",
	"baiduspider",
	"applebot",
	"ia_archiver",
	"embedly",
	"quora link preview",
	"redditbot",
	"rogerbot",
	"showyoubot",
	"outbrain",
	"nuzzel",
	"bitlybot",
	"w3c_validator",
	"crawler",
	"spider",
	"bot/",
	"bot;",
}

// IsBot reports whether the user agent belongs to a crawler or
// link-preview fetcher. An empty user agent counts as a bot: several
// messaging fetchers send none at all.
func IsBot(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return true
	}
	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}
	return false
}
