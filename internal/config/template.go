package config

// DefaultTOML is written by `asmfmt init`.
const DefaultTOML = `# asmfmt configuration
architecture       = "z80"
assembler          = "sjasmplus"
indent             = 2
upperCaseMnemonics = true
newlineAfterLabel  = true

# Directory with architectures/<name>/mnemonics.txt and
# assemblers/<name>/mnemonics.txt. Built-in lists are used when unset.
# mnemonicsDir = "mnemonics"

# extensions = [".asm", ".s", ".z80", ".inc"]
# cache = false
`
