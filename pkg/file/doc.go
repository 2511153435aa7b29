/*
Package file wraps the files composer-switch moves around.

	+-------------+        +-------------+
	|    File     | -----> |  LockFile   |
	| (raw bytes) |        | (.json ->   |
	+------+------+        |   .lock)    |
	       |               +-------------+
	+------+------+
	| ConfigFile  |
	| (JSON doc)  |
	+-------------+

🎯 Purpose:
- Existence checks, deletes and overwriting copies of manifests and lock files
- Mechanical derivation of lock artifact and flag marker paths
- Typed load/save of JSON documents with key order preserved

⚡ Errors:
Every failure is an *Error carrying a Kind with a stable numeric code
(182101 and up). Use KindOf / CodeOf to classify an error anywhere in a
wrapped chain.

🔍 Example:

	main := file.NewConfigFile("composer.json")
	doc, err := main.Load(ctx)
	if err != nil {
		return err
	}
	err = main.LockFile().CopyTo(file.New("composer/composer-prod.lock"))
*/
package file
