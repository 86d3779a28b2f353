package bsp

import "testing"

func TestParseEntitiesOrder(t *testing.T) {
	es := ParseEntities([]byte(`{
"classname" "worldspawn"
"wad" "gfx/base.wad"
"message" "the Slipgate Complex"
}`))
	if len(es) != 1 {
		t.Fatalf("entities = %d", len(es))
	}
	ps := es[0].Properties()
	want := []Property{
		{"classname", "worldspawn"},
		{"wad", "gfx/base.wad"},
		{"message", "the Slipgate Complex"},
	}
	if len(ps) != len(want) {
		t.Fatalf("pairs = %v", ps)
	}
	for i := range want {
		if ps[i] != want[i] {
			t.Errorf("pair %d = %v want %v", i, ps[i], want[i])
		}
	}
}

func TestParseEntitiesDuplicateKey(t *testing.T) {
	es := ParseEntities([]byte(`{"light" "200" "light" "300"}`))
	if len(es) != 1 {
		t.Fatalf("entities = %d", len(es))
	}
	// first value wins for lookups, both survive in file order
	if v, _ := es[0].Property("light"); v != "200" {
		t.Errorf("light = %q want 200", v)
	}
	if n := len(es[0].Properties()); n != 2 {
		t.Errorf("pairs = %d want 2", n)
	}
}

func TestParseEntitiesTruncated(t *testing.T) {
	es := ParseEntities([]byte(`{
"classname" "light"
}
{
"classname" "monster_army"
"origin`))
	// pairs parsed before the tear survive
	if len(es) != 2 {
		t.Fatalf("entities = %d want 2", len(es))
	}
	if es[0].Classname() != "light" {
		t.Errorf("classname = %q", es[0].Classname())
	}
	if es[1].Classname() != "monster_army" || len(es[1].Properties()) != 1 {
		t.Errorf("torn block = %v", es[1].Properties())
	}
}

func TestParseEntitiesEmpty(t *testing.T) {
	if es := ParseEntities(nil); len(es) != 0 {
		t.Errorf("nil lump produced %d entities", len(es))
	}
	if es := ParseEntities([]byte("  \n\x00")); len(es) != 0 {
		t.Errorf("blank lump produced %d entities", len(es))
	}
}
