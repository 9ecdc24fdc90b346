package redis

const (
	// KeyPrefixWebsite is the prefix for website record keys
	KeyPrefixWebsite = "siteinfo:website:"
	// KeyPrefixURL is the prefix for URL -> record ID lookup keys
	KeyPrefixURL = "siteinfo:url:"
	// KeyWebsitesByCreated is the sorted set of record IDs scored by creation time
	KeyWebsitesByCreated = "siteinfo:websites:by_created"
)

// WebsiteKey returns the Redis key for a website record by ID
func WebsiteKey(id string) string {
	return KeyPrefixWebsite + id
}

// URLKey returns the Redis key mapping a URL to its record ID
func URLKey(url string) string {
	return KeyPrefixURL + url
}
