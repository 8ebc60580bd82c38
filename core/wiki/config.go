package wiki

// Config holds configuration for the MediaWiki API client.
type Config struct {
	// UserAgent identifies the tool to the wiki APIs, as required by the
	// Wikimedia user agent policy.
	UserAgent string `mapstructure:"user_agent" default:"WikiCheck/1.0 (https://github.com/OndraMix/Wiki)"`
	// APITemplate is the printf-style template for a language edition's
	// action API endpoint. The single %s is the edition code (cs, en, de).
	APITemplate string `mapstructure:"api_template" default:"https://%s.wikipedia.org/w/api.php"`
	// WikidataAPI is the endpoint used for sitelink (entity link) resolution.
	WikidataAPI string `mapstructure:"wikidata_api" default:"https://www.wikidata.org/w/api.php"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
