package scenario

// File is the on-disk shape of a scenario, shared by the YAML and TOML decoders.
type File struct {
	Name string `yaml:"name" toml:"name"`

	// Interfaces declares interfaces beyond the prelude.
	Interfaces []InterfaceDecl `yaml:"interfaces,omitempty" toml:"interfaces"`

	Generics *GenericsDecl `yaml:"generics,omitempty" toml:"generics"`

	// Expected is the type the enclosing expression expects, if any.
	Expected string `yaml:"expected,omitempty" toml:"expected"`

	// Obligations are registered in the pool in this order.
	Obligations []string `yaml:"obligations,omitempty" toml:"obligations"`

	// Where lists the predicates of the parameter environment.
	Where []string `yaml:"where,omitempty" toml:"where"`

	Closure ClosureDecl `yaml:"closure" toml:"closure"`

	Expect *ExpectDecl `yaml:"expect,omitempty" toml:"expect"`
}

type InterfaceDecl struct {
	Name  string   `yaml:"name" toml:"name"`
	Arity int      `yaml:"arity,omitempty" toml:"arity"`
	Items []string `yaml:"items,omitempty" toml:"items"`
}

// GenericsDecl lists generic parameters by name. Names starting with a
// quote are region parameters; "'_" is an anonymous region.
type GenericsDecl struct {
	Parent []string `yaml:"parent,omitempty" toml:"parent"`
	// Own are the closure's own parameters. When omitted, one type
	// parameter is declared per capture.
	Own []string `yaml:"own,omitempty" toml:"own"`
}

type ClosureDecl struct {
	// ID is the expression's node id; Def defaults to ID+1000.
	ID  uint32 `yaml:"id" toml:"id"`
	Def uint32 `yaml:"def,omitempty" toml:"def"`

	// Params are written "x" or "x: T".
	Params   []string `yaml:"params,omitempty" toml:"params"`
	Returns  string   `yaml:"returns,omitempty" toml:"returns"`
	Captures []string `yaml:"captures,omitempty" toml:"captures"`

	// Body is a list of "return T" and "yield T" statements.
	Body []string `yaml:"body,omitempty" toml:"body"`
}

type ExpectDecl struct {
	Signature  string `yaml:"signature,omitempty" toml:"signature"`
	Resolved   string `yaml:"resolved,omitempty" toml:"resolved"`
	Capability string `yaml:"capability,omitempty" toml:"capability"`
	Type       string `yaml:"type,omitempty" toml:"type"`
	Coroutine  *bool  `yaml:"coroutine,omitempty" toml:"coroutine"`
	Error      string `yaml:"error,omitempty" toml:"error"`
}
