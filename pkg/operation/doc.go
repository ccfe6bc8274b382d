/*
Package operation patches a target file according to a patch definition.

	+-------------+      +-------------+      +-------------+
	|   status    | ---> |    text     | ---> |   status    |
	|  ReadFile   |      | ReplaceText |      |  WriteFile  |
	+-------------+      +------+------+      +-------------+
	                            ^
	                     +------+------+
	                     |  provider   |
	                     |  templates  |
	                     +-------------+

🔄 Flow:
1. Read the whole target (status.ErrSourceUnavailable on failure)
2. Drop rules whose files glob does not match the target
3. Resolve replacement templates, fetching remote ones concurrently
4. Apply the rules in order on a single thread
5. With require_match, fail with ErrNoMatch when a rule found nothing
6. Dry run: compute a unified diff and stop
7. Otherwise write the result when it differs (status.ErrDestinationUnwritable on failure)

A target where no rule matched is left untouched and is not an error.

🔍 Example:

	op, err := operation.NewPatchOperation(operation.Options{
		Config: cfg,
		Files:  status.New("."),
	})
	if err != nil {
		return err
	}

	if err := operation.NewRunner(zerolog.Ctx(ctx), false).Run(ctx, op); err != nil {
		return err
	}

	report := op.Report()
*/
package operation
