// Package fuzztests houses Go fuzz harnesses for the formatting engine. Its
// goal is to guard against panics and to check output invariants on arbitrary
// input.
//
// Назначение: прогонять произвольные байты через format.Source и проверять
// инварианты из internal/testkit.
//
// Не делает: запись файлов, выполнение CLI.
//
// Зависимости: internal/format, internal/mnemonic, internal/testkit.

package fuzztests
