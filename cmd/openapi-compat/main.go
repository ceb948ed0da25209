// Package main checks that a SkillSwap API revision stays backward compatible
// with a published swagger contract. Without -revision the contract compiled
// into the server binary is used.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"skillswap/docs"

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

var supportedMethods = map[string]struct{}{
	"get":    {},
	"put":    {},
	"post":   {},
	"delete": {},
	"patch":  {},
}

type operation struct {
	Responses      map[string]struct{}
	RequiredParams map[string]struct{}
	Secured        bool
}

type contract struct {
	Paths map[string]map[string]operation
}

func main() {
	basePath := flag.String("base", "", "published swagger contract (yaml or json)")
	revisionPath := flag.String("revision", "", "revision swagger contract; defaults to the built-in docs")
	flag.Parse()

	if strings.TrimSpace(*basePath) == "" {
		fmt.Fprintln(os.Stderr, "usage: openapi-compat -base <path> [-revision <path>]")
		os.Exit(2)
	}

	base, err := loadFile(*basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load base contract: %v\n", err)
		os.Exit(1)
	}

	var revision contract
	if strings.TrimSpace(*revisionPath) == "" {
		revision, err = loadBuiltIn()
	} else {
		revision, err = loadFile(*revisionPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load revision contract: %v\n", err)
		os.Exit(1)
	}

	issues := compare(base, revision)
	if len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "backward compatibility check failed:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "- %s\n", issue)
		}
		os.Exit(1)
	}

	fmt.Printf("openapi compatibility check passed (%d paths)\n", len(base.Paths))
}

func loadFile(path string) (contract, error) {
	// #nosec G304: path comes from CLI flags in a dev tool
	raw, err := os.ReadFile(path)
	if err != nil {
		return contract{}, err
	}
	return parseContract(raw)
}

func loadBuiltIn() (contract, error) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return contract{}, err
	}
	parsed := map[string]any{}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		return contract{}, err
	}
	return contractFromDoc(parsed)
}

// parseContract accepts yaml or single-line json.
func parseContract(raw []byte) (contract, error) {
	doc := map[string]any{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return contract{}, err
	}
	return contractFromDoc(doc)
}

func contractFromDoc(doc map[string]any) (contract, error) {
	pathsRaw, ok := doc["paths"]
	if !ok {
		return contract{}, errors.New("missing top-level paths field")
	}
	pathsMap, ok := toMap(pathsRaw)
	if !ok {
		return contract{}, errors.New("paths is not an object")
	}

	c := contract{Paths: make(map[string]map[string]operation)}
	for pathKey, pathEntry := range pathsMap {
		pathOps, ok := toMap(pathEntry)
		if !ok {
			continue
		}

		ops := make(map[string]operation)
		for methodKey, methodEntry := range pathOps {
			method := strings.ToLower(strings.TrimSpace(methodKey))
			if _, supported := supportedMethods[method]; !supported {
				continue
			}
			fields, ok := toMap(methodEntry)
			if !ok {
				continue
			}
			ops[method] = parseOperation(fields)
		}

		if len(ops) > 0 {
			c.Paths[pathKey] = ops
		}
	}
	return c, nil
}

func parseOperation(fields map[string]any) operation {
	op := operation{
		Responses:      make(map[string]struct{}),
		RequiredParams: make(map[string]struct{}),
	}

	if responses, ok := toMap(fields["responses"]); ok {
		for code := range responses {
			if normalized := strings.ToLower(strings.TrimSpace(code)); normalized != "" {
				op.Responses[normalized] = struct{}{}
			}
		}
	}

	if params, ok := fields["parameters"].([]any); ok {
		for _, p := range params {
			pm, ok := toMap(p)
			if !ok {
				continue
			}
			if required, _ := pm["required"].(bool); required {
				op.RequiredParams[fmt.Sprintf("%v:%v", pm["in"], pm["name"])] = struct{}{}
			}
		}
	}

	if sec, ok := fields["security"].([]any); ok && len(sec) > 0 {
		op.Secured = true
	}
	return op
}

func toMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// compare lists the changes in revision that would break a client written
// against base: removed paths, operations or response codes, newly required
// parameters and public operations that now demand a session.
func compare(base, revision contract) []string {
	var issues []string

	for path, baseOps := range base.Paths {
		revOps, ok := revision.Paths[path]
		if !ok {
			issues = append(issues, fmt.Sprintf("removed path: %s", path))
			continue
		}

		for method, baseOp := range baseOps {
			label := strings.ToUpper(method) + " " + path
			revOp, ok := revOps[method]
			if !ok {
				issues = append(issues, "removed operation: "+label)
				continue
			}

			for code := range baseOp.Responses {
				if _, ok := revOp.Responses[code]; !ok {
					issues = append(issues, fmt.Sprintf("removed response code: %s -> %s", label, strings.ToUpper(code)))
				}
			}
			for param := range revOp.RequiredParams {
				if _, ok := baseOp.RequiredParams[param]; !ok {
					issues = append(issues, fmt.Sprintf("new required parameter: %s -> %s", label, param))
				}
			}
			if revOp.Secured && !baseOp.Secured {
				issues = append(issues, "operation now requires a session: "+label)
			}
		}
	}

	sort.Strings(issues)
	return issues
}
