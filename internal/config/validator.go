package config

// Warnings reports settings that load fine but are probably a mistake
func (c *Config) Warnings() []string {
	var warnings []string

	if c.DBPassword == ExampleDBPassword {
		warnings = append(warnings, WarnMsgDBPassword)
	}
	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, WarnMsgAPIKey)
	}
	switch c.JWTSecret {
	case "":
		warnings = append(warnings, WarnMsgNoJWTSecret)
	case ExampleJWTSecret:
		warnings = append(warnings, WarnMsgJWTSecret)
	}
	if c.IdentityTrustHeaders {
		warnings = append(warnings, WarnMsgTrustHeaders)
	}
	if c.StoreDriver == StoreDriverMemory && c.IsProduction() {
		warnings = append(warnings, WarnMsgMemoryInProd)
	}

	return warnings
}
