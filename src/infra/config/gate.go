package config

import (
	"os"
	"strings"

	"itemsapi/src/core/ports"
)

// Variable is one environment variable a driver depends on.
type Variable struct {
	Name     string
	Required bool
	// Secret variables are reported by presence only.
	Secret bool
}

var driverVariables = map[Driver][]Variable{
	DriverMSSQL: {
		{Name: "DB_SERVER", Required: true},
		{Name: "DB_NAME", Required: true},
		{Name: "DB_USER", Required: true},
		{Name: "DB_PASSWORD", Required: true, Secret: true},
	},
	DriverPostgres: {
		{Name: "PGHOST", Required: true},
		{Name: "PGPORT"},
		{Name: "PGDATABASE", Required: true},
		{Name: "PGUSER", Required: true},
		{Name: "PGPASSWORD", Required: true, Secret: true},
		{Name: "PGSSL"},
	},
}

// Gate inspects the live environment for the variables of one driver.
// Nothing is cached: every call re-reads the environment.
type Gate struct {
	driver Driver
	vars   []Variable
	lookup func(string) (string, bool)
}

// NewGate returns a gate for the given driver reading the process environment.
func NewGate(driver Driver) *Gate {
	return NewGateWithLookup(driver, os.LookupEnv)
}

// NewGateWithLookup returns a gate reading variables through lookup.
func NewGateWithLookup(driver Driver, lookup func(string) (string, bool)) *Gate {
	return &Gate{
		driver: driver,
		vars:   driverVariables[driver],
		lookup: lookup,
	}
}

// Driver returns the driver the gate inspects.
func (g *Gate) Driver() Driver {
	return g.driver
}

// Missing returns the names of required variables that are unset or blank,
// in declaration order. The result is never nil.
func (g *Gate) Missing() []string {
	missing := []string{}
	for _, v := range g.vars {
		if !v.Required {
			continue
		}
		if _, ok := g.value(v.Name); !ok {
			missing = append(missing, v.Name)
		}
	}
	return missing
}

// Status reports completeness plus the values of non-secret variables.
func (g *Gate) Status() ports.ConfigStatus {
	missing := g.Missing()
	visible := make(map[string]string, len(g.vars))
	for _, v := range g.vars {
		if v.Secret {
			continue
		}
		val, _ := g.value(v.Name)
		visible[v.Name] = val
	}
	return ports.ConfigStatus{
		OK:      len(missing) == 0,
		Missing: missing,
		Visible: visible,
	}
}

func (g *Gate) value(name string) (string, bool) {
	raw, ok := g.lookup(name)
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}
