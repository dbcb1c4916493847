// Package domain models event attendee registrations and the rules used to
// clean them, look up their representatives, and summarize when people signed up.
//
// # Data Source
//
// Attendee rosters are exported from the event registration form as a CSV (or
// an XLSX workbook) with a header row. The first column is an unnamed row
// identifier; the remaining headers are free text and are converted to symbolic
// keys before use (see the roster adapter):
//
//	,RegDate,first_Name,last_Name,Email_Address,HomePhone,Street,City,State,Zipcode
//	1,11/12/08 10:47,Allison,Nguyen,arannon@jumpstartlab.com,6154385000,...,20010
//
// # Zipcodes
//
// Spreadsheet tools drop leading zeros, so "02138" often arrives as "2138".
// Zipcodes are left-padded with '0' to five characters and truncated to the
// first five, so ZIP+4 values ("98122-4321") keep only the base code. No
// numeric validation is done. See [CleanZipcode].
//
// # Phone numbers
//
// Punctuation is discarded. Ten digits are formatted as "(AAA) BBB-CCCC"; eleven
// digits with a leading country code '1' drop the '1'. Anything else becomes the
// sentinel [InvalidPhoneNumber], which is printed on the letter as-is.
//
// # Registration time
//
// RegDate uses month/day/two-digit-year and 24-hour time without seconds, e.g.
// "2/1/18 14:30". Two-digit years 69-99 map to the 1900s and 00-68 to the 2000s.
// Values are read as wall-clock time; no zone conversion is applied.
//
// # Representatives
//
// Representative lookups can fail for many reasons (bad key, quota, malformed
// zipcode, network). Every failure degrades to a [RepresentativeList] carrying
// the fallback guidance text and a [FallbackReason].
package domain
