package main

import "errors"

var errNilPath = errors.New("libmarkov: corpus path is NULL")
