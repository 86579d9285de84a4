package cliconfig

import "os"

// ApplyEnvConfig applies CFLOG_* environment variables to the config.
// Env vars override file config but are overridden by explicitly set
// flags (checked via the changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("region", os.Getenv("CFLOG_REGION"), &cfg.Region)
	s.setString("profile", os.Getenv("CFLOG_PROFILE"), &cfg.Profile)
	s.setString("endpoint", os.Getenv("CFLOG_ENDPOINT"), &cfg.Endpoint)

	if err := s.setIntFromString("limit", os.Getenv("CFLOG_LIMIT"), &cfg.Limit); err != nil {
		return err
	}
	if err := s.setIntFromString("buffer-size", os.Getenv("CFLOG_BUFFER_SIZE"), &cfg.BufferSize); err != nil {
		return err
	}

	if err := s.setBoolFromString("json", os.Getenv("CFLOG_JSON"), &cfg.JSON); err != nil {
		return err
	}
	if err := s.setBoolFromString("verbose", os.Getenv("CFLOG_VERBOSE"), &cfg.Verbose); err != nil {
		return err
	}

	return nil
}
