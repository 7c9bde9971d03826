package commands

const (
	_etc = `C:\ProgramData\reports2sheets`
	_var = `C:\ProgramData\reports2sheets\var`

	DEFAULT_WORKDIR     = _var
	DEFAULT_CONFIG      = _etc + `\reports2sheets.toml`
	DEFAULT_CREDENTIALS = _etc + `\.google\credentials.json`
)
