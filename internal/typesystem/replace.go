package typesystem

// MapRegions rebuilds t with every region r replaced by f(r).
// Regions bound by a nested function pointer's own binder are left alone.
func MapRegions(t Type, f func(Region) Region) Type {
	if t == nil {
		return nil
	}
	switch typ := t.(type) {
	case TRef:
		return TRef{
			Region:  f(typ.Region),
			Mutable: typ.Mutable,
			Elem:    MapRegions(typ.Elem, f),
		}
	case TTuple:
		newElements := make([]Type, len(typ.Elements))
		for i, e := range typ.Elements {
			newElements[i] = MapRegions(e, f)
		}
		return TTuple{Elements: newElements}
	case TFnPtr:
		inner := make(map[Region]bool, len(typ.Sig.BoundRegions))
		for _, r := range typ.Sig.BoundRegions {
			inner[r] = true
		}
		return TFnPtr{Sig: typ.Sig.mapRegions(func(r Region) Region {
			if inner[r] {
				return r
			}
			return f(r)
		})}
	case TDynamic:
		out := TDynamic{Region: f(typ.Region)}
		if typ.Principal != nil {
			p := mapInterfaceRegions(*typ.Principal, f)
			out.Principal = &p
		}
		for _, proj := range typ.Projections {
			out.Projections = append(out.Projections, Projection{
				Interface: mapInterfaceRegions(proj.Interface, f),
				Item:      proj.Item,
				Ty:        MapRegions(proj.Ty, f),
			})
		}
		return out
	case TClosure:
		return TClosure{DefID: typ.DefID, Substs: typ.Substs.mapRegions(f)}
	case TCoroutine:
		return TCoroutine{
			DefID:    typ.DefID,
			Substs:   typ.Substs.mapRegions(f),
			Interior: Interior{Witness: MapRegions(typ.Interior.Witness, f)},
		}
	default:
		return t
	}
}

func mapInterfaceRegions(r InterfaceRef, f func(Region) Region) InterfaceRef {
	out := InterfaceRef{DefID: r.DefID, Name: r.Name, Self: MapRegions(r.Self, f)}
	for _, a := range r.Args {
		out.Args = append(out.Args, MapRegions(a, f))
	}
	return out
}
