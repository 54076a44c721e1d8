package opa

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// PolicyReader Handle policy discovery and file reading
type PolicyReader struct{}

func NewPolicyReader() *PolicyReader {
	return &PolicyReader{}
}

// ReadPolicies reads every .rego file of policiesDir except *_test.rego.
func (pr *PolicyReader) ReadPolicies(policiesDir string) (map[string]string, error) {
	entries, err := os.ReadDir(policiesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read policies directory: %w", err)
	}

	policies := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".rego") || strings.HasSuffix(name, "_test.rego") {
			continue
		}

		path := filepath.Join(policiesDir, name)
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
		}

		policies[name] = string(content)
		zap.S().Named("opa").Debugf("Read policy: %s", name)
	}

	if len(policies) == 0 {
		return nil, fmt.Errorf("no .rego policy files found in directory: %s", policiesDir)
	}

	zap.S().Named("opa").Infof("Successfully read %d policy files from: %s", len(policies), policiesDir)
	return policies, nil
}
