/*
Package status owns the file boundary of a patch run: loading the target,
storing the result and describing what happened to it.

	            +-------------+
	            |   Status    |
	            |  (Storage)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           |  Lines  |
	| (Storage) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Reads the whole target file before a transform
- Overwrites the same path after one, keeping its mode
- Tracks a FileInfo per path (status, replacements, checksum)
- Formats outcomes for the console

⚡ Errors:
- ErrSourceUnavailable: the target could not be read. Fatal, never retried.
- ErrDestinationUnwritable: the result could not be stored. Fatal.

Both are reported as *FileError, which matches the kind and the underlying
os error with errors.Is.

🔍 Example:

	mgr := status.New(root)

	content, err := mgr.ReadFile(ctx, "src/page.tsx")
	if err != nil {
		return err
	}

	// ... transform ...

	if err := mgr.WriteFile(ctx, "src/page.tsx", patched); err != nil {
		return err
	}

	fmt.Println(status.FormatFileOperation(status.FileInfo{
		Path:         "src/page.tsx",
		Status:       status.StatusModified,
		Replacements: 1,
	}))
*/
package status
