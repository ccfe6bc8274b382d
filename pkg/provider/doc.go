/*
Package provider defines where replacement templates come from.

	            +-------------+
	            |  Provider   |
	            | (templates) |
	            +------+------+
	                   |
	      +------------+-----------+
	      |            |           |
	+-----+----+  +----+----+  +---+----+
	|  GitHub  |  |  Local  |  |  HTTP  |
	| Provider |  |  Files  |  |  URLs  |
	+----------+  +---------+  +--------+

🎯 Purpose:
- Opens a replacement template by repository, ref and path
- Keeps provider specific details (auth, URLs, encodings) out of the patch operation
- Reports a short source description for logs

🤝 Registration:
Provider packages register a Factory by name from init, as the github and
local subpackages do. The http provider lives in this package.

	import (
		_ "github.com/walteh/patchrc/pkg/provider/github"
		_ "github.com/walteh/patchrc/pkg/provider/local"
	)

	p, err := provider.Get(ctx, "github")
	rc, err := p.Fetch(ctx, provider.Args{
		Repo: "github.com/org/templates",
		Ref:  "main",
		Path: "cards.tsx",
	})

Missing templates are reported as ErrTemplateNotFound.
*/
package provider
