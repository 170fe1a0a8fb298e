// Package mnemonic holds the set of instruction keywords the formatter
// recognizes and the word lists it is built from.
//
// Назначение: загрузка и объединение списков мнемоник (архитектура + ассемблер).
// Не делает: разбора операндов, проверки синтаксиса.
// Зависимости: только io/fs; встроенные списки лежат в lists/.
package mnemonic
