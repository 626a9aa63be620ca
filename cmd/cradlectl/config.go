package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"cradle/internal/babyworld"
	cradleapi "cradle/pkg/cradle"
)

func loadSimulateRequestFromConfig(path string) (cradleapi.SimulateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cradleapi.SimulateRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return cradleapi.SimulateRequest{}, err
	}

	var req cradleapi.SimulateRequest
	if v, ok := asString(raw["policy"]); ok {
		req.Policy = v
	}
	if v, ok := asFloat64(raw["random_feed_p"]); ok {
		req.RandomFeedP = v
	}
	if v, ok := asInt(raw["episodes"]); ok {
		req.Episodes = v
	}
	if v, ok := asInt(raw["steps"]); ok {
		req.Steps = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		req.Workers = v
	}

	if paramsMap, ok := raw["params"].(map[string]any); ok {
		params := babyworld.DefaultParams()
		if v, ok := asFloat64(paramsMap["r_feed"]); ok {
			params.RFeed = v
		}
		if v, ok := asFloat64(paramsMap["r_hungry"]); ok {
			params.RHungry = v
		}
		if v, ok := asFloat64(paramsMap["p_become_hungry"]); ok {
			params.PBecomeHungry = v
		}
		if v, ok := asFloat64(paramsMap["p_cry_when_hungry"]); ok {
			params.PCryWhenHungry = v
		}
		if v, ok := asFloat64(paramsMap["p_cry_when_quiet"]); ok {
			params.PCryWhenQuiet = v
		}
		if v, ok := asFloat64(paramsMap["discount"]); ok {
			params.Discount = v
		}
		req.Params = &params
	}

	return req, nil
}

// overrideFromFlags lets explicit command-line flags win over config file
// values, matching flag precedence elsewhere in the tool.
func overrideFromFlags(req *cradleapi.SimulateRequest, fs *flag.FlagSet) error {
	var outerErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "policy":
			req.Policy = f.Value.String()
		case "random-feed-p":
			if v, ok := f.Value.(flag.Getter); ok {
				req.RandomFeedP = v.Get().(float64)
			}
		case "episodes":
			if v, ok := f.Value.(flag.Getter); ok {
				req.Episodes = v.Get().(int)
			}
		case "steps":
			if v, ok := f.Value.(flag.Getter); ok {
				req.Steps = v.Get().(int)
			}
		case "seed":
			if v, ok := f.Value.(flag.Getter); ok {
				req.Seed = v.Get().(int64)
			}
		case "workers":
			if v, ok := f.Value.(flag.Getter); ok {
				req.Workers = v.Get().(int)
			}
		case "store", "db-path", "config", "json":
			// Not part of the simulate request.
		default:
			outerErr = fmt.Errorf("unexpected flag override: %s", f.Name)
		}
	})
	return outerErr
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
