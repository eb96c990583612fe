package extract

// cookieDismissSelectors cover the consent banners that pollute text
// extraction. Matching elements are removed from the document before any
// field selectors run. The list skips JS-only selectors (":has-text" style)
// since a server-side prune works on static markup.
var cookieDismissSelectors = []string{
	// OneTrust
	`#onetrust-banner-sdk`,
	`#onetrust-consent-sdk`,
	// Cookiebot
	`#CybotCookiebotDialog`,
	// Cookie Consent lib
	`.cc-window`,
	`.cc-banner`,
	// GDPR specific
	`#gdpr-banner`,
	`.gdpr-banner`,
	// Generic patterns
	`[class*="cookie-banner"]`,
	`[class*="cookie-consent"]`,
	`[class*="cookieConsent"]`,
	`[id*="cookie-banner"]`,
	`[class*="consent-banner"]`,
	`[class*="consent-manager"]`,
}
