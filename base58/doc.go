/*
Package base58 converts bytes to and from Base58 text, the big-endian radix-58
notation wallets use for addresses, public keys and signatures.

An Alphabet maps the 58 digit values to printable ASCII. BTCAlphabet, the
package default, is the one Bitcoin and Solana share: the digits 1-9 and the
Latin letters without 0, O, I and l. FlickrAlphabet swaps the letter cases.
Other alphabets can be built with NewAlphabet.

Every leading zero byte of the input turns into one copy of the alphabet's
first character, so a 32-byte all-zero key encodes as 32 '1's and decodes back
to exactly 32 bytes.

CheckEncode and CheckDecode add a version byte in front of the payload and
four bytes of double SHA-256 behind it. A single mistyped character then fails
CheckDecode with ErrChecksum instead of yielding a different payload.
*/
package base58
