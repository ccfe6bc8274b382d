/*
Package config loads and validates patch definitions for patchrc.

	            +-------------+
	            |   Config    |
	            |  (target,   |
	            |   rules)    |
	            +------+------+
	                   |
	      +------------+-----------+
	      |            |           |
	+-----+----+  +----+----+  +---+----+
	|   YAML   |  |  JSON   |  |  HCL   |
	|  Parser  |  | Parser  |  | Parser |
	+----------+  +---------+  +--------+

🎯 Purpose:
- Parses a patch definition: the target file, the completion notice and
  an ordered list of rules
- Picks a parser by file extension; a .patchrc file is tried as YAML, then HCL
- Resolves relative paths against the directory of the config file

🔄 Rules:
Each rule names a start and end anchor, the wildcard and line modes, a
count policy, an optional doublestar filter on the target path, and exactly
one replacement source: inline text, a template file, or a provider source.

🔍 Example:

	cfg, err := config.Load(ctx, "patch.yaml")
	if err != nil {
		return err
	}

	for _, rule := range cfg.Rules {
		p, err := rule.Pattern()
		...
	}

HCL files may reference the environment:

	target = "${env.APP_ROOT}/frontend/src/pages/ReferrerEarningsPage.tsx"

	rule "earnings-table" {
	  start               = "<div className=\"overflow-x-auto -mx-4 sm:mx-0\">"
	  end                 = "</div> )}"
	  flexible_whitespace = true
	  replacement_file    = "cards.tsx"
	}
*/
package config
