package ensemble

var UnknownResult = unknownResult
