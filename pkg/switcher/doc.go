/*
Package switcher moves a composer project between its production and
development manifests.

	+-------------+      +-------------+
	|   Engine    +----->+ status.Store|
	| (SwitchTo)  |      | (mode)      |
	+------+------+      +-------------+
	       |
	+------+------+      +-------------+
	|  file.File  |      |    synth    |
	| (copy/lock) |      | (DEV config)|
	+-------------+      +-------------+

🎯 Purpose:
- Keep a production backup of composer.json and composer.lock
- Build the DEV composer.json from the backup and the local repositories
- Record the active mode in the status file, and nowhere else

🔄 Transitions:

	initial -> dev   synthesize, seed backup, restore or drop the lock
	initial -> prod  seed backup
	prod    -> dev   synthesize, back up lock, restore DEV lock or drop it
	dev     -> prod  keep DEV lock, restore production manifest and lock
	dev     -> dev   synthesize again
	prod    -> prod  keep whichever manifest was written last

A missing composer.lock stops every transition before anything is written.
The DEV manifest is built before the first write, so a broken dev config or
manifest changes nothing. An existing production backup is only replaced
in PROD, when composer.json was edited after it.
The status record is written last. A failure before that returns an
*AbortError listing the steps already applied; those are not rolled back.

🔍 Example:

	eng := switcher.New(switcher.Options{
		Main:     "composer.json",
		Prod:     "composer/composer-prod.json",
		Dev:      "composer/dev-config.json",
		Reporter: log.New(os.Stdout, logger),
	})
	if err := eng.SwitchToDevelopment(ctx); err != nil {
		return err
	}
	for _, msg := range eng.Messages() {
		fmt.Println(msg.Text)
	}
*/
package switcher
