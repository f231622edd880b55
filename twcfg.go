// Package twcfg loads, validates and normalizes the configuration declaration
// of a utility-first CSS generator (the object usually kept in
// tailwind.config.js).
//
// A declaration has three well-known fields:
//
//	{
//		content: ["*.html", "./src/**/*.rs"], // required, non-empty
//		theme:   { extend: {} },              // optional
//		plugins: [],                          // optional
//	}
//
// # Loading
//
// Decode a declaration file and validate it in one step:
//
//	cfg, err := twcfg.LoadFile("tailwind.config.js")
//	if errors.Is(err, twcfg.ErrEmptyContent) {
//		// nothing would ever be scanned
//	}
//
// Or validate an already decoded mapping:
//
//	cfg, err := twcfg.Load(map[string]any{
//		"content": []any{"*.html"},
//	})
//
// A loaded Config is never mutated. Reloads replace it wholesale through a
// Holder, which a Watcher keeps current while the file changes on disk.
//
// # Scanning
//
// Scanner is a reference implementation of the content scanner that consumes
// Config.Content:
//
//	result, err := twcfg.NewScanner(".", cfg.Content).Scan(ctx)
//
// # CLI Tool
//
//	go install github.com/yacobolo/twcfg/cmd/twcfg@latest
package twcfg
