package config

// Merge folds a partial configuration into base. Only fields the partial
// actually sets replace the base values; per-list overrides merge key by key.
func Merge(base, partial Config) Config {
	result := base

	if partial.Key != nil {
		result.Key = partial.Key
	}
	if partial.Root != nil {
		result.Root = partial.Root
	}
	if partial.Current != nil {
		result.Current = partial.Current
	}
	if partial.Medium != nil {
		result.Medium = partial.Medium
	}
	if partial.Host != nil {
		result.Host = partial.Host
	}
	if partial.Menu.Title != "" {
		result.Menu.Title = partial.Menu.Title
	}
	if partial.Menu.MaxHeight != 0 {
		result.Menu.MaxHeight = partial.Menu.MaxHeight
	}

	if len(partial.Lists) > 0 {
		merged := make(map[string]ListOptions, len(result.Lists)+len(partial.Lists))
		for name, opts := range result.Lists {
			merged[name] = opts
		}
		for name, opts := range partial.Lists {
			merged[name] = mergeListOptions(merged[name], opts)
		}
		result.Lists = merged
	}

	return result
}

func mergeListOptions(base, override ListOptions) ListOptions {
	result := base
	if override.Codec != nil {
		result.Codec = override.Codec
	}
	if override.Persist != nil {
		result.Persist = override.Persist
	}
	if override.OnCreate != nil {
		result.OnCreate = override.OnCreate
	}
	return result
}
