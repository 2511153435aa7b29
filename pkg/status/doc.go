/*
Package status records which composer configuration a project is switched to.

	            +-------------+
	            |    Store    |
	            | (dev-config |
	            |   .status)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Mode    |           | Inspect |
	| (enum)    |           | (files) |
	+-----------+           +---------+

🎯 Purpose:
- Single source of truth for the current mode, never inferred from manifests
- Atomic rewrite of the record at the end of every successful switch
- Read-only inspection of the tracked files for the status command

🔄 Record layout:

	{
	    "mode": "dev",
	    "date": "2025-01-31 14:03:12",
	    "mainFile": "/project/composer.json",
	    "prodFile": "/project/composer/composer-prod.json",
	    "devFile": "/project/composer/dev-config.json"
	}

A missing record or a blank mode is ModeInitial. An unknown mode string is an
error rather than a silent fallback.

🔍 Example:

	store := status.NewStore(status.PathFor(devPath))
	mode, err := store.Mode(ctx)
*/
package status
