// Package config persists the sender configuration.
//
// The configuration is a flat key-value record with four keys:
//
//	pc_ip: 192.168.1.101   # receiver host
//	pc_port: "8080"        # receiver port (text)
//	debug_enabled: false   # debug log on/off
//	device_name: Laptop    # optional, overrides the platform name
//
// Absent keys take the defaults above. The record is stored as YAML in the
// platform configuration directory:
//   - Linux: $XDG_CONFIG_HOME/casttompv/config.yaml or $HOME/.config/casttompv/config.yaml
//   - macOS: $HOME/.config/casttompv/config.yaml
//   - Windows: %LOCALAPPDATA%\casttompv\config.yaml
//
// CASTTOMPV_CONFIG points the store at another file.
//
// # Usage Example
//
//	store, err := config.DefaultStore()
//	if err != nil {
//	    return err
//	}
//	cfg, err := store.Load()
//	if err != nil {
//	    return err
//	}
//	cfg.Host = "10.0.0.5"
//	if err := store.Save(cfg); errors.Is(err, config.ErrValidation) {
//	    // host or port empty, nothing written
//	}
//
// Save writes a temporary file and renames it over the record, so a reader
// sees either the old record or the new one.
package config
