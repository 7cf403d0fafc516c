package config

// Param is one named connection parameter as reported at boot.
type Param struct {
	Name    string
	Value   string
	Present bool
}

const maskedPrefix = 4

// Params lists the connection parameters with secrets masked to a short
// prefix. Missing values are reported, never rejected here.
func (c *Config) Params() []Param {
	return []Param{
		param("DATABASE_URL", c.DBUrl, true),
		param("REDIS_URL", c.RedisURL, true),
		param("S3_BUCKET", c.S3.Bucket, false),
		param("S3_REGION", c.S3.Region, false),
		param("JWT_SECRET", c.JWTSecret, true),
		param("BOT_API_KEY", c.BotAPIKey, true),
	}
}

func param(name, value string, secret bool) Param {
	p := Param{Name: name, Present: value != ""}
	switch {
	case !p.Present:
		p.Value = "MISSING"
	case secret:
		p.Value = mask(value)
	default:
		p.Value = value
	}
	return p
}

func mask(v string) string {
	if len(v) <= maskedPrefix {
		return "****"
	}
	return v[:maskedPrefix] + "****"
}
