// Package artifacts writes the evidence of a failed spec to disk.
//
// For a spec titled "Checkout" > "pays by card" that failed at 14:05:07 on
// 9 March 2024 the files are:
//
//	output/Checkout/20240309-140507 - pays by card.url.txt
//	output/Checkout/20240309-140507 - pays by card.html
//	output/Checkout/20240309-140507 - pays by card.png
//	output/Checkout/20240309-140507 - pays by card.a11y.json   (only after an a11y check)
//	output/Checkout/20240309-140507 - pays by card.browser-logs.txt
//	output/Checkout/20240309-140507 - pays by card.driver-raw-logs.txt
//
// Passed specs only drain the driver log buffer so the next failure does not
// include entries from earlier specs sharing the session.
package artifacts
