package commands

const (
	_etc = "/usr/local/etc/reports2sheets"
	_var = "/usr/local/var/reports2sheets"

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + "/reports2sheets.toml"
	DEFAULT_CREDENTIALS = _etc + "/.google/credentials.json"
)
