/*
Package header provides Header, the collection of HTTP header fields a response accumulates.

A Header keeps fields in the order they were first set, treats names case-insensitively,
and holds one or many values per field.
Date-valued fields set through SetTime remember they are dates,
so Time reads them back without parsing.

The Cache-Control field is addressable by directive,
and cookies are held apart from the other fields until rendered by HTTPHeader.
*/
package header
