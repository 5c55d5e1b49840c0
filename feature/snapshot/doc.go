// Package snapshot decodes the JSON state files written by dump1090 into
// reconcile.Record values.
//
// Both dump1090-mutability (altitude, vert_rate, speed) and dump1090-fa
// (alt_baro, baro_rate, gs) field names are understood. An altitude of "ground"
// becomes the on-ground sentinel. Identity codes are trimmed and lower-cased;
// entries without one are counted in Snapshot.Rejected and left out.
package snapshot
