package symbols

import (
	"testing"

	"github.com/funvibe/closurecheck/internal/config"
	"github.com/funvibe/closurecheck/internal/typesystem"
)

func TestPreludeCallableFamily(t *testing.T) {
	st := NewSymbolTable()

	tests := []struct {
		name string
		want typesystem.CapabilityLevel
	}{
		{"Fn", typesystem.CallImmutable},
		{"FnMut", typesystem.CallMutable},
		{"FnOnce", typesystem.CallOnce},
	}
	for _, tt := range tests {
		sym, ok := st.FindInterface(tt.name)
		if !ok {
			t.Fatalf("%s not in prelude", tt.name)
		}
		level, ok := st.CapabilityOf(sym.DefID)
		if !ok || level != tt.want {
			t.Errorf("CapabilityOf(%s) = %s, %v", tt.name, level, ok)
		}
		if !sym.HasItem(config.OutputItemName) {
			t.Errorf("%s does not declare Output", tt.name)
		}
	}

	clone, _ := st.FindInterface("Clone")
	if _, ok := st.CapabilityOf(clone.DefID); ok {
		t.Error("Clone must not be in the callable family")
	}
	if _, ok := st.CapabilityOf(9999); ok {
		t.Error("unknown def must not be in the callable family")
	}
}

func TestRenamedLangItems(t *testing.T) {
	items := config.LangItems{Fn: "Call", FnMut: "CallMut", FnOnce: "CallOnce", Output: "Ret"}
	st := NewEnclosedSymbolTable(NewPrelude(items))

	if _, ok := st.FindInterface("Fn"); ok {
		t.Error("default name Fn should not be defined")
	}
	sym, ok := st.FindInterface("CallMut")
	if !ok || sym.DefID != config.FnMutTraitID || !sym.HasItem("Ret") {
		t.Errorf("CallMut = %+v, %v", sym, ok)
	}
	once, ok := st.CallableInterface(typesystem.CallOnce)
	if !ok || once.Name != "CallOnce" {
		t.Errorf("CallableInterface(FnOnce) = %+v", once)
	}
}

func TestDefineInterfaceScopes(t *testing.T) {
	prelude := NewPrelude(config.Default().LangItems)
	a := NewEnclosedSymbolTable(prelude)
	b := NewEnclosedSymbolTable(prelude)

	mapper, err := a.DefineInterface("Mapper", 1, []string{"Out"}, "scenario")
	if err != nil {
		t.Fatal(err)
	}
	if mapper.DefID < firstUserDefID {
		t.Errorf("user DefID %s collides with prelude range", mapper.DefID)
	}
	if _, err := a.DefineInterface("Mapper", 0, nil, "scenario"); err == nil {
		t.Error("expected redefinition error")
	}
	if _, err := a.DefineInterface("FnMut", 1, nil, "scenario"); err == nil {
		t.Error("expected an error when shadowing a prelude interface")
	}
	if _, ok := b.FindInterface("Mapper"); ok {
		t.Error("sibling scope sees Mapper")
	}

	other, err := b.DefineInterface("Other", 0, nil, "scenario")
	if err != nil {
		t.Fatal(err)
	}
	if other.DefID == mapper.DefID {
		t.Errorf("sibling scopes allocated the same DefID %s", other.DefID)
	}

	found, ok := a.FindByDef(mapper.DefID)
	if !ok || found.Name != "Mapper" {
		t.Errorf("FindByDef = %+v, %v", found, ok)
	}

	ifaces := a.Interfaces()
	if len(ifaces) == 0 || ifaces[0].Name != "Mapper" {
		t.Errorf("inner scope interfaces should come first, got %v", ifaces)
	}
}
