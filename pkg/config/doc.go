/*
Package config finds and parses the project config for composer-switch.

	            +-------------+
	            |   Config    |
	            | (main/prod/ |
	            |    dev)     |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+-----+ +----+----+ +-----+-----+
	|   YAML    | |   HCL   | |   JSON    |
	|  Parser   | | Parser  | |  Parser   |
	+-----------+ +---------+ +-----------+

🎯 Purpose:
- Locate .composer-switch.{yaml,yml,hcl,json} in the project directory
- Fill in the default layout for anything left out
- Resolve relative paths against the config file

📄 Example (.composer-switch.yaml):

	main: composer.json
	prod: composer/composer-prod.json
	dev: composer/dev-config.json

The same in HCL:

	main = "composer.json"
	prod = "${project_dir}/composer/composer-prod.json"
	dev  = "composer/dev-config.json"

Unknown keys are rejected by every parser.

🔍 Example:

	cfg, err := config.LoadProject(ctx, ".", "")
	if err != nil {
		return err
	}
	eng := switcher.New(switcher.Options{Main: cfg.Main, Prod: cfg.Prod, Dev: cfg.Dev})
*/
package config
