package fs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/feedscrape"
	"gopkg.in/yaml.v3"
)

// DefaultTargetsFile is the targets file used when none is configured.
const DefaultTargetsFile = "linkedin_urls.json"

// LoadTargets reads a JSON file of ["Name", "URL"] pairs, or a YAML file
// (.yaml or .yml) listing name and url mappings.
// Returns ENOTFOUND if the file does not exist and EINVALID if it is
// malformed, empty, or names an invalid target.
func LoadTargets(path string) ([]feedscrape.Target, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, feedscrape.Errorf(feedscrape.ENOTFOUND, `%s not found, create it with format [["Company Name", "URL"], ...]`, path)
	} else if err != nil {
		return nil, fmt.Errorf("reading targets file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLTargets(path, data)
	}
	return parseJSONTargets(path, data)
}

func parseJSONTargets(path string, data []byte) ([]feedscrape.Target, error) {
	if !json.Valid(data) {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "%s is not valid JSON", path)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "%s should contain a list of [name, url] pairs", path)
	}
	if len(entries) == 0 {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "%s is empty", path)
	}

	targets := make([]feedscrape.Target, 0, len(entries))
	for _, entry := range entries {
		var pair []string
		if err := json.Unmarshal(entry, &pair); err != nil || len(pair) != 2 {
			return nil, feedscrape.Errorf(feedscrape.EINVALID, `each entry should be ["Company Name", "URL"], invalid entry: %s`, entry)
		}
		target := feedscrape.Target{Name: pair[0], URL: pair[1]}
		if err := target.Validate(); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func parseYAMLTargets(path string, data []byte) ([]feedscrape.Target, error) {
	var targets []feedscrape.Target
	if err := yaml.Unmarshal(data, &targets); err != nil {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "%s should contain a list of name and url entries: %v", path, err)
	}
	if len(targets) == 0 {
		return nil, feedscrape.Errorf(feedscrape.EINVALID, "%s is empty", path)
	}
	for i := range targets {
		if err := targets[i].Validate(); err != nil {
			return nil, err
		}
	}
	return targets, nil
}
