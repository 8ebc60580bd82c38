// Package chembox defines the chemistry infobox field registry.
//
// The Czech "Infobox - chemická sloučenina" is the reference; its parameters
// are compared against the English Chembox family and the German
// "Infobox Chemikalie".
//
// # Components
//
//   - Fields: the eight comparable attributes with their per-edition
//     candidate parameter keys.
//   - DefaultConfig: the comparison mode, tolerance and unit-heuristic
//     defaults per attribute.
//   - NewSpec: assembles a ready-to-run reconcile.Spec from the above.
//
// Identifier fields (CAS, EINECS, PubChem) use exact normalized matching;
// physical quantities compare their first number with a 0.5 tolerance, with
// the unit heuristic enabled for fields the editions habitually express in
// different units.
package chembox
